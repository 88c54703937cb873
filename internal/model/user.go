package model

type User struct {
	Username  string `json:"username" db:"username"`
	Name      string `json:"name" db:"name"`
	AvatarURL string `json:"avatar_url" db:"avatar_url"`
}

type GetUserRequest struct {
	Username string `param:"username" json:"-" validate:"required"`
}

func (r *GetUserRequest) Validate() error {
	return validate.Struct(r)
}
