package repo

import "sync"

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// Always answers every prompt with answer.
func Always(answer bool) Confirmer {
	return ConfirmFunc(func(string) (bool, error) {
		return answer, nil
	})
}

// ScriptedConfirmer replays a fixed list of answers and records the prompts
// it was shown. Once the answers run out it declines.
type ScriptedConfirmer struct {
	mu      sync.Mutex
	answers []bool
	prompts []string
}

// Sequence returns a ScriptedConfirmer that answers in order.
func Sequence(answers ...bool) *ScriptedConfirmer {
	return &ScriptedConfirmer{answers: answers}
}

func (s *ScriptedConfirmer) Confirm(prompt string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return false, nil
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// Prompts returns every prompt shown so far.
func (s *ScriptedConfirmer) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}
