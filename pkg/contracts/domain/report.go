package domain

// MetricsReport is the engine's complete output for one analysis invocation:
// overall field comparison, time-of-day split, peer group comparison, and
// hole-by-hole breakdown, merged with explicit partial-data markers.
//
// The report is a pure value. It carries no timestamps and no random state,
// so two invocations over an unchanged Dataset produce bit-identical reports.
// It is owned solely by the caller and discarded after the downstream
// narrative step consumes it; nothing here is persisted.
type MetricsReport struct {
	PlayerID string `json:"player_id"`

	Overall      OverallMetrics     `json:"overall"`
	TimeSegments TimeSegmentMetrics `json:"time_segments"`
	Peers        PeerComparison     `json:"peers"`
	Holes        []HoleStat         `json:"holes,omitempty"`

	// TotalParDelta is the sum of per-hole scores relative to par.
	// Meaningful only when HolesAvailable is true.
	TotalParDelta  int  `json:"total_par_delta"`
	HolesAvailable bool `json:"holes_available"`

	// HandicapTrendAvailable is false when the dataset carries a single
	// skill-index snapshot per player, which provides no trend signal.
	HandicapTrendAvailable bool `json:"handicap_trend_available"`

	// Partial is true when any section carries an insufficient-data or
	// unavailable marker; Gaps names each gap so the narrative layer can
	// report it instead of fabricating a value.
	Partial bool     `json:"partial"`
	Gaps    []string `json:"gaps,omitempty"`
}

// StatComparison compares the selected player to the field on one statistic.
type StatComparison struct {
	Name string `json:"name"`

	// PlayerValue is nil when the selected player has no value for this
	// statistic.
	PlayerValue *float64 `json:"player_value,omitempty"`

	// FieldMean is the mean over every player carrying the statistic.
	FieldMean float64 `json:"field_mean"`

	// FieldMeanExclPlayer is the mean over the rest of the field, with the
	// selected player removed, so that deltas reflect the field rather than
	// a mean polluted by the subject.
	FieldMeanExclPlayer float64 `json:"field_mean_excl_player"`

	// Delta is PlayerValue - FieldMeanExclPlayer.
	Delta float64 `json:"delta"`

	// Percentile is the fractional-rank percentile of the player's value in
	// [0, 100], ties resolved by averaging rank positions.
	Percentile float64 `json:"percentile"`

	// SampleSize counts the players carrying this statistic.
	SampleSize int `json:"sample_size"`

	// InsufficientData is set when fewer than two usable values remain for
	// the statistic; the comparative fields above are zero and must not be
	// interpreted.
	InsufficientData bool `json:"insufficient_data"`
}

// OverallMetrics is the per-statistic field comparison for one player,
// ordered as the statistics appear in the schema.
type OverallMetrics struct {
	PlayerID string           `json:"player_id"`
	Stats    []StatComparison `json:"stats"`
}

// SegmentMetrics is one time-of-day segment's scoring summary.
type SegmentMetrics struct {
	Label string `json:"label"`

	// PlayerAvg is the selected player's scoring average in this segment;
	// valid only when PlayerAvailable is true. A segment the player has no
	// rounds in is reported unavailable, never zero or interpolated.
	PlayerAvg       float64 `json:"player_avg"`
	PlayerAvailable bool    `json:"player_available"`
	PlayerRounds    int     `json:"player_rounds"`

	// FieldAvg is the field's scoring average over rounds in this segment;
	// valid only when FieldAvailable is true.
	FieldAvg       float64 `json:"field_avg"`
	FieldAvailable bool    `json:"field_available"`
	FieldRounds    int     `json:"field_rounds"`
}

// TimeSegmentMetrics is the time-of-day performance split for one player.
type TimeSegmentMetrics struct {
	PlayerID  string           `json:"player_id"`
	ScoreStat string           `json:"score_stat"`
	Segments  []SegmentMetrics `json:"segments"`

	// PlayerDelta and FieldDelta are first segment minus second segment.
	// PlayerDelta is valid only when DeltaAvailable is true (the player has
	// rounds in both segments); FieldDelta is valid when both segments have
	// field rounds.
	PlayerDelta    float64 `json:"player_delta"`
	FieldDelta     float64 `json:"field_delta"`
	DeltaAvailable bool    `json:"delta_available"`

	// OptimalWindow is the label of the segment with the lower (better)
	// scoring average, empty when no comparison was possible.
	OptimalWindow string `json:"optimal_window,omitempty"`
}

// PeerStatDelta compares the player to their peer group on one statistic.
type PeerStatDelta struct {
	Name     string  `json:"name"`
	PeerMean float64 `json:"peer_mean"`
	Delta    float64 `json:"delta"`

	// InsufficientData is set when no peer carries the statistic or the
	// player has no value to compare.
	InsufficientData bool `json:"insufficient_data"`
}

// PeerComparison compares one player to the peer group sharing their
// skill-index bucket.
type PeerComparison struct {
	PlayerID string `json:"player_id"`

	// GroupRange is the human-readable bucket range, e.g. "5-9".
	GroupRange string `json:"group_range"`

	// GroupSize counts every member of the bucket, the subject included.
	GroupSize int `json:"group_size"`

	Stats []PeerStatDelta `json:"stats,omitempty"`

	// InsufficientPeers is set when the player's bucket has no other member;
	// the comparison is reported as a gap rather than suppressing the whole
	// report.
	InsufficientPeers bool `json:"insufficient_peers"`
}

// HoleStat is the per-hole comparison line: the player's score against par,
// the peer group average, and the field average. Holes keep source order.
type HoleStat struct {
	Hole          int     `json:"hole"`
	Par           int     `json:"par"`
	PlayerScore   int     `json:"player_score"`
	VsPar         int     `json:"vs_par"`
	PeerAvg       float64 `json:"peer_avg"`
	PeerAvailable bool    `json:"peer_available"`
	FieldAvg      float64 `json:"field_avg"`
}
