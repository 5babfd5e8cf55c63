package domain

type Country struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type City struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	CountryID   int64  `db:"country_id" json:"country"`
	CountryName string `db:"country_name" json:"country_name"`
}
