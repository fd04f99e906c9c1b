package models

// Коллекции сайта компарсы. Хранилище документов о схемах ничего не знает,
// типизация живёт только на HTTP-границе.

type NewsItem struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image,omitempty"`
	Date        string `json:"date,omitempty"`
}

type HistoryEntry struct {
	ID      string   `json:"id,omitempty"`
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Images  []string `json:"images,omitempty"`
	Year    string   `json:"year,omitempty"`
}

type Leader struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name" validate:"required"`
	Surname string `json:"surname" validate:"required"`
	Role    string `json:"role" validate:"required,oneof='presidente' 'capitan' 'abanderado' 'cantinera mayor' 'vocal'"`
	Tenure  string `json:"tenure,omitempty"`
	Photo   string `json:"photo,omitempty"`
}

type Volunteer struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name" validate:"required"`
	Surname string `json:"surname" validate:"required"`
	Year    int    `json:"year" validate:"required"`
	Photo   string `json:"photo,omitempty"`
}

type Photo struct {
	ID    string `json:"id,omitempty"`
	Image string `json:"image" validate:"required"`
}

// SignupRequest - заявка посетителя, после создания не изменяется.
// Тип оружия обязателен для пуэсто "escopeta", серийный номер - только для remington.
type SignupRequest struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name" validate:"required"`
	NationalID   string `json:"nationalId" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	BankAccount  string `json:"bankAccount,omitempty"`
	Role         string `json:"role" validate:"required,oneof=txibilito redoble partxe cubero escopeta"`
	WeaponType   string `json:"weaponType,omitempty" validate:"required_if=Role escopeta,omitempty,oneof=remington replica"`
	SerialNumber string `json:"serialNumber,omitempty" validate:"required_if=WeaponType remington"`
	Comments     string `json:"comments,omitempty"`
	SubmittedAt  string `json:"submittedAt,omitempty"`
}
