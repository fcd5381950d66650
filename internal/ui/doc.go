// Package ui renders command activity for interactive sessions.
//
// ConsoleCommandEventLogger translates shell execution events into the concise
// lines a person watching a clone or repair expects, while structured
// diagnostics keep flowing through the zap loggers unchanged.
package ui
