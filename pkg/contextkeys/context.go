package contextkeys

// Keys shared between the auth middleware and handlers via gin.Context.
const (
	// UserID is where the auth middleware stores the caller's user ID.
	UserID = "userID"
	// Role is where the auth middleware stores the caller's role.
	Role = "role"
)
