package usecase

import "github.com/thiagodifaria/Begriff/pkg/events"

func toAny(evts []events.DomainEvent) []interface{} {
	out := make([]interface{}, len(evts))
	for i, e := range evts {
		out[i] = e
	}
	return out
}
