package fringe

// Version is the fringe release version.
const Version = "0.3.1"
