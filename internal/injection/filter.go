// Package injection provides a stateless heuristic filter for prompt
// injection attempts. It runs before the moderation call so that known
// attack shapes never reach a collaborator.
package injection

import "regexp"

// Patterns cover English and Russian injection phrasings observed in
// production traffic.
var patterns = []string{
	`\byour instructions\b`,
	`\byour prompt\b`,
	`\bsystem prompt\b`,
	`\bsystem\s*[:=]\s*`,
	`\byou are\b.*?\b(an?|the)\b.*?\b(assistant|ai|bot|llm|model|hacker|friend|god|master)\b`,
	`\bignore\s+previous\s+instructions?\b`,
	`\bdisregard\s+all\s+prior\s+prompts?\b`,
	`\bas\s+a\s+(friend|developer|admin|god|expert|hacker)\b`,
	`\bact\s+as\s+(if\s+you\s+are|a)\s+(.*)`,
	`(?:^|\s)не\s+следуй\s+предыдущим\s+инструкциям(?:$|\s)`,
	`(?:^|\s)забудь\s+все\s+инструкции(?:$|\s)`,
	`(?:^|\s)ты\s+должен\s.*?(игнорировать|забыть|сменить)`,
	`\boverride\s+system\s+rules\b`,
	`\bpretend\s+to\s+be\b`,
	`\bfrom\s+now\s+on\b`,
	`\breset\s+your\s+identity\b`,
	`\bnew\s+instructions?\b.*?\b(from|given|are)\b`,
	`\boutput\s+only\b`,
	`\bdo\s+not\s+say\b`,
	`(?:^|\s)не\s+говори\s.*?(это|что|никому)`,
	`\bsecret\s+word\b`,
	`(?:^|\s)раскрой\s+секрет(?:$|\s)`,
	`(?:^|\s)выведи\s+весь\s+промпт(?:$|\s)`,
	`\bshow\s+me\s+the\s+system\s+prompt\b`,
}

var compiled = compile(patterns)

func compile(ps []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(ps))
	for _, p := range ps {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// Suspicious reports whether the question matches a known injection
// pattern.
func Suspicious(question string) bool {
	for _, re := range compiled {
		if re.MatchString(question) {
			return true
		}
	}
	return false
}
