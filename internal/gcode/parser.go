package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType classifies a parsed toolpath movement.
type MoveType int

const (
	MoveRapid MoveType = iota // G0, wheel up
	MoveFeed                  // G1 with the wheel up
	MoveScore                 // G1 with the wheel down
)

// Move is a single parsed movement.
type Move struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	ToX      float64
	ToY      float64
	FeedRate float64
}

// Length returns the XY distance covered by the move.
func (m Move) Length() float64 {
	return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
}

var coordRe = regexp.MustCompile(`([XYF])(-?\d+\.?\d*)`)

// ParseGCode parses a scoring program written with the given profile. It
// tracks the absolute position and whether the cutting wheel is down, and
// returns coordinates in inches whatever units the program uses.
func ParseGCode(code string, profile Profile) []Move {
	var moves []Move

	curX, curY, curFeed := 0.0, 0.0, 0.0
	scoring := false
	scale := 1.0
	if profile.Metric {
		scale = 1 / mmPerInch
	}
	scoreOn := strings.ToUpper(profile.ScoreOn)
	scoreOff := strings.ToUpper(profile.ScoreOff)

	for _, line := range strings.Split(code, "\n") {
		// Strip inline comments (semicolon or parenthetical)
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		if idx := strings.Index(line, "("); idx >= 0 {
			if end := strings.Index(line, ")"); end > idx {
				line = line[:idx] + line[end+1:]
			}
		}
		upper := strings.ToUpper(strings.TrimSpace(line))
		if upper == "" {
			continue
		}

		switch {
		case upper == "G20":
			scale = 1
			continue
		case upper == "G21":
			scale = 1 / mmPerInch
			continue
		case scoreOn != "" && upper == scoreOn:
			scoring = true
			continue
		case scoreOff != "" && upper == scoreOff:
			scoring = false
			continue
		}

		isRapid := hasCommand(upper, "G0", "G00")
		isFeed := hasCommand(upper, "G1", "G01")
		if !isRapid && !isFeed {
			continue
		}

		newX, newY, newFeed := curX, curY, curFeed
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val * scale
			case "Y":
				newY = val * scale
			case "F":
				newFeed = val * scale
			}
		}

		t := MoveRapid
		if isFeed {
			t = MoveFeed
			if scoring {
				t = MoveScore
			}
		}
		moves = append(moves, Move{
			Type:     t,
			FromX:    curX,
			FromY:    curY,
			ToX:      newX,
			ToY:      newY,
			FeedRate: newFeed,
		})
		curX, curY, curFeed = newX, newY, newFeed
	}
	return moves
}

func hasCommand(line string, names ...string) bool {
	for _, n := range names {
		if line == n || strings.HasPrefix(line, n+" ") {
			return true
		}
	}
	return false
}

// Stats summarises a parsed program.
type Stats struct {
	Scores       int     `json:"scores"`
	ScoreLength  float64 `json:"score_length"` // inches
	TravelLength float64 `json:"travel_length"`
	Minutes      float64 `json:"minutes"` // scoring time only, rapids not counted
}

// Summarize totals the scoring and travel moves.
func Summarize(moves []Move) Stats {
	var s Stats
	for _, m := range moves {
		l := m.Length()
		if m.Type == MoveScore {
			s.Scores++
			s.ScoreLength += l
			if m.FeedRate > 0 {
				s.Minutes += l / m.FeedRate
			}
			continue
		}
		s.TravelLength += l
	}
	return s
}
