package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPublic es la vista publica de un usuario, sin el hash de password.
type UserPublic struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public construye la vista publica del usuario.
func (u User) Public() UserPublic {
	return UserPublic{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

type UserList struct {
	Users []UserPublic `json:"users"`
}

// NewUserList convierte usuarios a su vista publica; nunca devuelve nil.
func NewUserList(users []User) UserList {
	out := make([]UserPublic, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return UserList{Users: out}
}

type Message struct {
	Message string `json:"message"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MaxPageLimit es el tamano maximo de pagina aceptado.
const MaxPageLimit = 100

// Page define la paginacion offset/limit de los listados.
type Page struct {
	Offset int `form:"offset,default=0"`
	Limit  int `form:"limit,default=10"`
}

// DefaultPage devuelve la paginacion por defecto.
func DefaultPage() Page {
	return Page{Offset: 0, Limit: 10}
}
