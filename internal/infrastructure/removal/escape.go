package removal

import "strings"

// The elevation command is ultimately a string handed to a command
// interpreter, and the path inside it came from user navigation. Every
// interpolation below goes through one of these quoting helpers so that
// backslash, double-quote, dollar, backtick, and the rest of the shell's
// metacharacters stay literal.

// shellQuote wraps s in POSIX single quotes. Inside single quotes the shell
// treats every character literally; embedded single quotes are closed,
// backslash-escaped, and reopened.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// appleScriptQuote embeds s in an AppleScript string literal. AppleScript
// strings only give backslash and double-quote special meaning.
func appleScriptQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// powerShellQuote wraps s in PowerShell single quotes, where the only
// special character is the single quote itself, escaped by doubling.
func powerShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
