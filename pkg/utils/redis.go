package utils

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-redis/redis"
)

// RedisDialParams is the network and address to reach a redis server
type RedisDialParams struct {
	Scheme   string
	Host     string
	Password string
}

// parseRedisAddress accepts tcp://host:port, redis://host:port and
// unix:///path/to/socket. A user in the url is used as the password.
func parseRedisAddress(address string) (RedisDialParams, error) {
	var params RedisDialParams
	u, err := url.Parse(address)
	if err != nil {
		return params, err
	}

	switch u.Scheme {
	case "redis", "tcp":
		params.Scheme = "tcp"
		params.Host = u.Host
	case "unix":
		params.Scheme = "unix"
		params.Host = u.Path
	default:
		return params, fmt.Errorf("unknown scheme '%s' expecting tcp or unix", u.Scheme)
	}

	if u.User != nil {
		params.Password = u.User.Username()
	}

	return params, nil
}

// RedisOptions builds the client options for a redis address
func RedisOptions(address string) (*redis.Options, error) {
	params, err := parseRedisAddress(address)
	if err != nil {
		return nil, err
	}

	return &redis.Options{
		Network:     params.Scheme,
		Addr:        params.Host,
		Password:    params.Password,
		PoolSize:    5,
		DialTimeout: 5 * time.Second,
		IdleTimeout: 1 * time.Minute,
	}, nil
}

// NewRedisClient creates a client for the redis server at address
func NewRedisClient(address string) (*redis.Client, error) {
	opts, err := RedisOptions(address)
	if err != nil {
		return nil, err
	}

	return redis.NewClient(opts), nil
}
