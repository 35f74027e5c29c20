package protocol

// HELLO (editor -> server)
type HelloMsg struct {
	Type            string            `json:"type"`
	ProtocolVersion string            `json:"protocol_version"`
	ClientName      string            `json:"client_name,omitempty"`
	Capabilities    HelloCapabilities `json:"capabilities,omitempty"`
}

type HelloCapabilities struct {
	MaxQueue int `json:"max_queue,omitempty"`
}

// WELCOME (server -> editor)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	SessionID       string      `json:"session_id"`
	StageParams     StageParams `json:"stage_params"`
}

// StageParams tells the editor what it is driving: the stage rectangle and
// the timing/scaling constants the engine will apply to its programs.
type StageParams struct {
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
	TickRateHz       int     `json:"tick_rate_hz"`
	BaseSize         float64 `json:"base_size"`
	ScaleFloor       float64 `json:"scale_floor"`
	ActionIntervalMs int     `json:"action_interval_ms"`
	SayClearMs       int     `json:"say_clear_ms"`
}

// COMMAND (editor -> server). One authoring or playback operation.
type CommandMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	Op              string      `json:"op"`
	SpriteID        string      `json:"sprite_id,omitempty"`
	Kind            string      `json:"kind,omitempty"`
	ActionID        string      `json:"action_id,omitempty"`
	Action          *ActionSpec `json:"action,omitempty"`
	Width           float64     `json:"width,omitempty"`
	Height          float64     `json:"height,omitempty"`
}

// ActionSpec is one authored block as it crosses the wire. Only the fields
// relevant to Kind are expected to be set.
type ActionSpec struct {
	Kind    string  `json:"kind"`
	Amount  float64 `json:"amount,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Text    string  `json:"text,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
	Repeat  int     `json:"repeat,omitempty"`
}

// STATE (server -> editor). The per-frame render snapshot.
type StateMsg struct {
	Type            string       `json:"type"`
	ProtocolVersion string       `json:"protocol_version"`
	Frame           uint64       `json:"frame"`
	Playing         bool         `json:"playing"`
	Selected        string       `json:"selected,omitempty"`
	Sprites         []SpriteView `json:"sprites"`
}

type SpriteView struct {
	ID     string  `json:"id"`
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Dir    float64 `json:"dir"`
	Scale  float64 `json:"scale"`
	Saying string  `json:"saying,omitempty"`
}
