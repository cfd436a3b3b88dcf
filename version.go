package tales

// Version is the release of the tales module. Overridden at build time with
// -ldflags "-X github.com/aretw0/tales.Version=...".
var Version = "0.1.0-dev"
