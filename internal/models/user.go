package models

// UserProfile is the directory record of an authenticated employee.
// EmployeeType (CDI, CDD, Intérim, Stagiaire, Cadre...) is the profile
// string the authorization gate compares against knowledge entries;
// Title and Department are display-only.
type UserProfile struct {
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	EmployeeType string `json:"employee_type"`
	Title        string `json:"title"`
	Department   string `json:"department"`
}
