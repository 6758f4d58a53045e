package repository

// CountSource provides the current order counter value.
type CountSource interface {
	Count() int
}
