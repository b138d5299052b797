package main

// SavedMsg signals that the buffer was written back to disk.
type SavedMsg struct {
	Path string
}

// SaveErrorMsg indicates that writing the buffer to disk failed.
type SaveErrorMsg struct {
	Err error
}
