package user

type CreateUserDTO struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Status      string   `json:"status"`
}

// UpdateUserDTO uses pointers so absent fields are left untouched.
type UpdateUserDTO struct {
	Username    *string   `json:"username"`
	Email       *string   `json:"email"`
	Password    *string   `json:"password"`
	Role        *string   `json:"role"`
	Permissions *[]string `json:"permissions"`
	Status      *string   `json:"status"`
}
