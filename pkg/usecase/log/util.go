package log

import "github.com/logrusorgru/aurora"

func Red(format string, a ...interface{}) string {
	return aurora.Sprintf(aurora.Red(format), a...)
}

func Green(format string, a ...interface{}) string {
	return aurora.Sprintf(aurora.Green(format), a...)
}

func Yellow(format string, a ...interface{}) string {
	return aurora.Sprintf(aurora.Yellow(format), a...)
}

func Blue(format string, a ...interface{}) string {
	return aurora.Sprintf(aurora.Blue(format), a...)
}

func Cyan(format string, a ...interface{}) string {
	return aurora.Sprintf(aurora.Cyan(format), a...)
}

func Bold(format string, a ...interface{}) string {
	return aurora.Sprintf(aurora.Bold(format), a...)
}
