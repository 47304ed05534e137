package models

// Permissions is the per-feature capability set of an editor account.
// Known keys: courses_edit, syllabus_edit, schedule_edit, notices_edit,
// homepage_edit, exams_edit, course_materials_edit.
type Permissions map[string]bool

type User struct {
	ID          string      `bson:"id" json:"id"`
	Username    string      `bson:"username" json:"username"`
	Password    string      `bson:"password" json:"password,omitempty"` // stored as plain text, legacy behavior
	Name        string      `bson:"name" json:"name"`
	Role        string      `bson:"role" json:"role"` // "admin" or "editor"
	Permissions Permissions `bson:"permissions" json:"permissions"`
}

// Can reports whether the user holds the given capability. Admins hold all.
func (u User) Can(permission string) bool {
	if u.Role == "admin" {
		return true
	}
	return u.Permissions[permission]
}
