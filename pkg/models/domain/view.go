package domain

// View is an addressable reporting view: the profile name it is
// configured under plus the numeric view id used on the wire.
type View struct {
	Name string
	ID   string
}
