package notify

// Gateway payloads. Field names are fixed by the push gateway.

type alertPayload struct {
	Tokens      []string `json:"tokens"`
	Title       string   `json:"title"`
	Message     string   `json:"message"`
	Sound       string   `json:"sound"`
	PrinterName string   `json:"printerName"`
	UseDev      bool     `json:"useDev"`
	Category    string   `json:"category,omitempty"`
}

type jobPayload struct {
	Tokens       []string `json:"tokens"`
	PrinterID    string   `json:"printerID"`
	PrinterState string   `json:"printerState"`
	Silent       bool     `json:"silent"`
	UseDev       bool     `json:"useDev"`
	Completion   *float64 `json:"printerCompletion,omitempty"`
	Test         bool     `json:"test,omitempty"`
}

type bedPayload struct {
	Tokens      []string `json:"tokens"`
	PrinterID   string   `json:"printerID"`
	EventCode   string   `json:"eventCode"`
	Temperature float64  `json:"temperature"`
	Minutes     int      `json:"minutes,omitempty"`
	Silent      bool     `json:"silent"`
	UseDev      bool     `json:"useDev"`
}

type mmuPayload struct {
	Tokens    []string `json:"tokens"`
	PrinterID string   `json:"printerID"`
	EventCode string   `json:"eventCode"`
	Silent    bool     `json:"silent"`
	UseDev    bool     `json:"useDev"`
}
