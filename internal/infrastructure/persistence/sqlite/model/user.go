package model

type User struct {
	Email     string  `gorm:"column:email;type:text;primaryKey"`
	Name      string  `gorm:"column:name;type:text;not null"`
	Role      string  `gorm:"column:role;type:text;not null"`
	Agency    string  `gorm:"column:agency;type:text;not null"`
	CreatedAt string  `gorm:"column:created_at;type:text;not null"`
	LastLogin *string `gorm:"column:last_login;type:text"`
}

func (User) TableName() string {
	return "users"
}
