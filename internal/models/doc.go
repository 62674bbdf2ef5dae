// Package models provides functionality for listing and categorizing
// the models a probed API key has access to. It helps users discover
// which generation, embedding, and legacy models are available before
// pointing an application at one.
package models
