package codec

import "strings"

// FindDefinition locates the line span of a dataset definition in buffer
// text. It matches the first line containing
//
//	<variableName> = pd.DataFrame(
//
// and walks subsequent lines counting parenthesis balance to find the
// closing line. Returned indices are 0-based and inclusive; ok is false when
// no definition exists.
//
// This is a purely textual search. Other references to the same variable
// elsewhere in the buffer are not tracked.
func FindDefinition(bufferText, variableName string) (start, end int, ok bool) {
	lines := strings.Split(bufferText, "\n")
	needle := variableName + " = pd.DataFrame("

	for i, line := range lines {
		if !strings.Contains(line, needle) {
			continue
		}

		balance := strings.Count(line, "(") - strings.Count(line, ")")
		end = i

		for end < len(lines)-1 && balance > 0 {
			end++
			balance += strings.Count(lines[end], "(") - strings.Count(lines[end], ")")
		}

		return i, end, true
	}

	return 0, 0, false
}
