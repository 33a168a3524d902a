package entity

// District is a neighbourhood rooms are listed under. Rooms reference it by
// name.
type District struct {
	Base
	Name        string  `db:"name"`
	Description *string `db:"description"`
}
