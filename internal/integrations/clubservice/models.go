package clubservice

// Club модель гольф-клуба из ClubService
type Club struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Region     string  `json:"region"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ManagerIDs []int64 `json:"manager_ids"`
}

// IsManager проверяет, входит ли пользователь в список менеджеров клуба
func (c *Club) IsManager(userID int64) bool {
	for _, id := range c.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от ClubService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
