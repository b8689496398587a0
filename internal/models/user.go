package models

// UnknownUser - данные входа или регистрации до проверки. Поля - указатели,
// чтобы отличать отсутствующее значение от пустого.
type UnknownUser struct {
	Login    *string `json:"login"`
	Password *string `json:"password"`
}

// User - сотрудник терминала.
type User struct {
	ID    string
	Login string
	Hash  string
}
