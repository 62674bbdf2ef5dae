package internal

// Version is the current keyprobe release version.
const Version = "0.3.1"
