package matchmaking

type merr string

func (e merr) Error() string { return string(e) }

const (
	ErrUnknownTrack = merr("unknown track")
	ErrRaceNotFound = merr("race not found")
)
