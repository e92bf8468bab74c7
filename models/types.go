package models

// Fixed shape of the deployment: ten puzzles, two scored parts each.
const (
	PuzzleCount = 10
	PartCount   = 2
)

// PrivilegedAdminID is always a member of the access set. Admin updates
// that rewrite the set must re-add it before writing.
const PrivilegedAdminID = "609283782897303554"

// Domain types

// Part is one of the two scoring units of a puzzle. Its six text fields
// are diffed generically by the cache.
type Part struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	Instructions string `json:"instructions"`
	InputKind    string `json:"input_kind"`
	UnsolvedForm string `json:"unsolved_form"`
	SolvedForm   string `json:"solved_form"`
}

// Puzzle always carries both parts; a part never exists without its
// sibling, and part rows cascade when the puzzle row is deleted.
type Puzzle struct {
	ID     int             `json:"id"`
	Flavor string          `json:"flavor"`
	Parts  [PartCount]Part `json:"parts"`
}

// Solution holds the expected answers, compared only, never rendered.
type Solution struct {
	Part1 string `json:"-"`
	Part2 string `json:"-"`
}

// Expected returns the answer string for a 1-based part index.
func (s Solution) Expected(part int) string {
	if part == 2 {
		return s.Part2
	}
	return s.Part1
}

// Obfuscation maps an internal puzzle id to its external identifiers.
// Seed data; immutable after load. Bijective on every attribute pair.
type Obfuscation struct {
	ID         int
	URLKey     string // non-guessable key used in URLs
	ContentKey string // key used to address page content
}

// ProgressVector is the solved/unsolved state for all puzzle parts,
// indexed [puzzle-1][part-1].
type ProgressVector [PuzzleCount][PartCount]bool

// Complete reports whether every part of every puzzle is solved.
func (v ProgressVector) Complete() bool {
	for _, parts := range v {
		for _, solved := range parts {
			if !solved {
				return false
			}
		}
	}
	return true
}

// ProgressRecord is the durable progress row for an identified user.
type ProgressRecord struct {
	UserID string         `json:"-"`
	Name   string         `json:"name"`
	Avatar string         `json:"avatar,omitempty"`
	Solved ProgressVector `json:"solved"`
}

// Champion is a user whose progress vector is fully true.
type Champion struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Request types

type SubmitAnswerRequest struct {
	Part   int    `json:"part"`
	Answer string `json:"answer"`
}

type UpdatePuzzleRequest struct {
	Parts  [PartCount]Part `json:"parts"`
	Flavor string          `json:"flavor"`
}

type UpdateSettingsRequest struct {
	Guild     string   `json:"guild"`
	Channels  []string `json:"channels"`
	Permitted []string `json:"permitted"`
	Release   int      `json:"release"`
}

// Response types

type IndexResponse struct {
	Release  int            `json:"release"`
	LoggedIn bool           `json:"logged_in"`
	Name     string         `json:"name,omitempty"`
	Avatar   string         `json:"avatar,omitempty"`
	Progress ProgressVector `json:"progress"`
}

// ChallengeResponse carries one puzzle's content with the answer forms
// selected by the caller's progress. ContentKey addresses the puzzle's
// static page assets.
type ChallengeResponse struct {
	Key        string            `json:"key"`
	ContentKey string            `json:"content_key"`
	Parts      [PartCount]Part   `json:"parts"`
	Forms      [PartCount]string `json:"forms"`    // solved-form once the part is solved
	PartTwo    bool              `json:"part_two"` // part 2 unlocked
	Done       bool              `json:"done"`     // both parts solved by an identified user
	Progress   [PartCount]bool   `json:"progress"`
}

type SubmitAnswerResponse struct {
	Correct bool   `json:"correct"`
	Message string `json:"message,omitempty"`
}

type UpdatePuzzleResponse struct {
	Result string `json:"result"` // "updated" or "no_change"
}

type AdminSettingsResponse struct {
	Guild     string   `json:"guild"`
	Channels  []string `json:"channels"`
	Permitted []string `json:"permitted"` // privileged identity omitted from display
	Release   int      `json:"release"`
}

type UpdateSettingsResponse struct {
	Release string `json:"release"` // "updated" or "no_change"
}

type AccessResponse struct {
	Flavor string `json:"flavor"`
}

type ChampionsResponse struct {
	Champions []Champion `json:"champions"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
