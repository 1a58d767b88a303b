package gymlog

// User is a gym log owner. Password is the plain text password as
// entered on register/login, it is never persisted (only its hash is).
type User struct {
	ID       int
	Username string
	Password string
}

func NewUser(username, password string) *User {
	return &User{
		Username: username,
		Password: password,
	}
}
