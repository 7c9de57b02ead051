package store

// User is the directory view of a groupware user within one context.
type User struct {
	ID        int
	ContextID int
	Login     string
	GivenName string
	Surname   string
}
