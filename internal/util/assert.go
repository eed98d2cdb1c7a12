package assert

import "github.com/rs/zerolog/log"

// Success unwraps calls that can only fail when the process is already in
// trouble, such as writing to stdout.
func Success[T any](v T, err error) T {
	if err != nil {
		log.Fatal().Err(err).Msg("unexpected failure")
	}
	return v
}
