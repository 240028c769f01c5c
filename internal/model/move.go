package model

// Move is either a simple step (one stop, no captures) or a capture line whose
// stops start at Src and list every landing square in order.
type Move struct {
	Src      Position   `json:"src"`
	Stops    []Position `json:"stops"`
	Captures []Position `json:"captures,omitempty"`
}

func (m Move) IsCapture() bool {
	return m.Captures != nil
}

func (m Move) Dst() Position {
	if len(m.Stops) == 0 {
		return m.Src
	}
	return m.Stops[len(m.Stops)-1]
}
