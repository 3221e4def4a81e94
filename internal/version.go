package internal

// Version is the application version shown in the window title and --version.
const Version = "0.3.1"
