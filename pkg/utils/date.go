package utils

import "time"

// ParseDate converte datas no formato YYYY-MM-DD usado pela Graph API.
// String vazia resulta em data zero, não em erro.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}
