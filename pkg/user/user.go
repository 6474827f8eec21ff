package user

// User is a traveler. All budget data is scoped by Id.
type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
}
