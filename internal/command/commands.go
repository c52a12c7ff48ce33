package command

import "github.com/rs/zerolog"

// NewDefault builds the dex, location and learn commands, wraps them with
// recovery, logging and (when available) history, and registers them.
func NewDefault(svc *Services, log zerolog.Logger) (*Registry, error) {
	dex, err := NewDex(svc)
	if err != nil {
		return nil, err
	}
	loc, err := NewLocation(svc)
	if err != nil {
		return nil, err
	}
	learn, err := NewLearn(svc)
	if err != nil {
		return nil, err
	}

	mws := []Middleware{WithRecovery(svc.Locale, log)}
	if svc.Has(ServiceHistory) {
		mws = append(mws, WithHistory(svc.History, log))
	}
	mws = append(mws, WithCommandLogger(log))

	r := NewRegistry()
	for _, c := range []Command{dex, loc, learn} {
		if err := r.Register(Apply(c, mws...)); err != nil {
			return nil, err
		}
	}
	return r, nil
}
