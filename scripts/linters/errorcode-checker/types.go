package main

// ErrorCodeInfo represents one errors.MustNewCode declaration
type ErrorCodeInfo struct {
	Name    string // Go identifier, e.g. ErrFrameTooLarge
	Code    string // code literal, e.g. dispatch.frame_too_large
	File    string
	Line    int
	Package string // directory of the declaring file
	Used    bool
	UsedIn  []string
}
