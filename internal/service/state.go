package service

// OrderState is the process-lifetime order counter together with the
// description of the most recently assembled order. Main creates one and
// shares it between the assembler and the persister.
type OrderState struct {
	count int
	last  string
}

// NewOrderState returns a state with no orders.
func NewOrderState() *OrderState {
	return &OrderState{}
}

// Next advances the counter and returns the new order id.
func (s *OrderState) Next() int {
	s.count++
	return s.count
}

// Count returns the number of assembly attempts so far.
func (s *OrderState) Count() int {
	return s.count
}

// Last returns the last assembled description, or "" if none.
func (s *OrderState) Last() string {
	return s.last
}

// Remember records description as the last assembled order.
func (s *OrderState) Remember(description string) {
	s.last = description
}

// Reset clears the counter and the last order. Only tests should need it.
func (s *OrderState) Reset() {
	s.count = 0
	s.last = ""
}
