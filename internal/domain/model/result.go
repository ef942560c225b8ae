package model

// ResultType is the store's matchresultattypid.
type ResultType int

const (
	ResultFulltime ResultType = 1
	ResultHalftime ResultType = 2
)

// ResultRecord is one reported score line.
type ResultRecord struct {
	MatchID    int        `json:"matchid"`
	TypeID     ResultType `json:"matchresultattypid"`
	Team1Goals int        `json:"matchlag1mal"`
	Team2Goals int        `json:"matchlag2mal"`
	Walkover   bool       `json:"wo"`
	OW         bool       `json:"ow"`
	WW         bool       `json:"ww"`
}

// ResultPayload wraps the records submitted in one result report.
type ResultPayload struct {
	Results []ResultRecord `json:"matchresultatListaJSON"`
}
