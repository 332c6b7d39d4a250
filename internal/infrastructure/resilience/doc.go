/*
Package resilience provides a circuit breaker for calls to the agent service.

# Overview

The breaker stops hammering an agent that keeps failing and lets a limited
number of trial calls through once its open timeout passes.

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open

Context cancellation is not counted as a failure unless Settings.IsFailure
says otherwise.

# Usage

	breaker := resilience.New("agent", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	job, err := resilience.Call(breaker, func() (*Job, error) {
		return client.submit(ctx, prompt)
	})
*/
package resilience
