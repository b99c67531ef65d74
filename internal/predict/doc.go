package predict

// Package predict sends a selected image to the inference endpoint as a
// multipart form, normalizes the tolerated response shapes into one ranked
// sequence, and runs submissions one at a time off the UI goroutine.
