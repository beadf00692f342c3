package models

// Actor is the authenticated caller as seen by the services.
type Actor struct {
	ID       string
	Name     string
	Role     Role
	Division *Division
}

func ActorFromUser(u *User) Actor {
	return Actor{ID: u.ID, Name: u.Username, Role: u.Role, Division: u.Division}
}
