package entity

import "time"

// Country país de origen asociable a una caja (relación muchos-a-muchos vía box_countries).
type Country struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
