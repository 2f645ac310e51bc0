package player

import (
	"sync"

	"github.com/anisan-cli/seaplay/aniskip"
	"github.com/anisan-cli/seaplay/log"
	"github.com/anisan-cli/seaplay/seek"
)

// Prompt tells which skip offers apply at the current position.
type Prompt struct {
	Intro bool
	Outro bool
}

// Skipper offers, and optionally performs, intro and outro skips.
// All seeks go through the session's seek.Seeker.
type Skipper struct {
	times  *aniskip.SkipTimes
	seeker *seek.Seeker
	auto   bool

	mu     sync.Mutex
	prompt Prompt
}

// NewSkipper returns a Skipper for times, which may be nil when nothing is known.
// With auto set, Check skips as soon as playback enters an interval.
func NewSkipper(seeker *seek.Seeker, times *aniskip.SkipTimes, auto bool) *Skipper {
	return &Skipper{times: times, seeker: seeker, auto: auto}
}

// Check updates the prompt for pos. Position zero never prompts.
func (s *Skipper) Check(pos float64) Prompt {
	var prompt Prompt
	if s.times != nil && pos > 0 {
		prompt.Intro = s.times.HasIntro && s.times.Opening.Contains(pos)
		prompt.Outro = s.times.HasOutro && s.times.Ending.Contains(pos)
	}

	s.mu.Lock()
	s.prompt = prompt
	s.mu.Unlock()

	if s.auto {
		switch {
		case prompt.Intro:
			log.Infof("auto skipping intro: %.1f -> %.1f", pos, s.times.Opening.End)
			s.seeker.Absolute(s.times.Opening.End)
		case prompt.Outro:
			log.Infof("auto skipping outro: %.1f -> %.1f", pos, s.times.Ending.End)
			s.seeker.Absolute(s.times.Ending.End)
		}
	}

	return prompt
}

// Prompt returns the result of the last Check.
func (s *Skipper) Prompt() Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt
}

// SkipIntro jumps to the end of the opening while it is being offered.
func (s *Skipper) SkipIntro() bool {
	if !s.Prompt().Intro {
		return false
	}
	s.seeker.Absolute(s.times.Opening.End)
	s.clear()
	return true
}

// SkipOutro jumps to the end of the ending while it is being offered.
func (s *Skipper) SkipOutro() bool {
	if !s.Prompt().Outro {
		return false
	}
	s.seeker.Absolute(s.times.Ending.End)
	s.clear()
	return true
}

func (s *Skipper) clear() {
	s.mu.Lock()
	s.prompt = Prompt{}
	s.mu.Unlock()
}

// Chapters returns timeline markers for the known intervals.
// Intervals without a positive length are left out.
func (s *Skipper) Chapters() []Chapter {
	if s.times == nil {
		return nil
	}

	chapters := []Chapter{{Title: "Part A", Time: 0}}

	if s.times.HasIntro && s.times.Opening.Valid() {
		chapters = append(chapters,
			Chapter{Title: "Opening", Time: s.times.Opening.Start},
			Chapter{Title: "Part B", Time: s.times.Opening.End},
		)
	}

	if s.times.HasOutro && s.times.Ending.Valid() {
		chapters = append(chapters,
			Chapter{Title: "Ending", Time: s.times.Ending.Start},
			Chapter{Title: "Preview", Time: s.times.Ending.End},
		)
	}

	if len(chapters) == 1 {
		return nil
	}
	return chapters
}

// ApplyChapters pushes Chapters to the player when there are any.
func (s *Skipper) ApplyChapters(p Player) error {
	chapters := s.Chapters()
	if len(chapters) == 0 || !p.Controllable() {
		return nil
	}
	return p.SetChapters(chapters)
}
