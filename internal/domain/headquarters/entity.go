package headquarters

import "time"

// Headquarters - a company site employees are attached to.
type Headquarters struct {
	ID        string
	Name      string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
