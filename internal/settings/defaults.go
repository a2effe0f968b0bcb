package settings

func defaultProfile(userID string) Profile {
	return Profile{
		UserID:           userID,
		SupportWeight:    0.5,
		CriteriaWeight:   0.3,
		SentimentWeight:  0.1,
		HistoricalWeight: 0.1,
	}
}
