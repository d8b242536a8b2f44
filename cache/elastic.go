package cache

import (
	"errors"
	"sync"

	"github.com/olivere/elastic"
)

var (
	elasticClient      *elastic.Client
	elasticClientMutex sync.RWMutex
)

func SetElastic(s *elastic.Client) {
	elasticClientMutex.Lock()
	elasticClient = s
	elasticClientMutex.Unlock()
}

func HasElastic() bool {
	elasticClientMutex.RLock()
	defer elasticClientMutex.RUnlock()

	return elasticClient != nil
}

func GetElastic() *elastic.Client {
	elasticClientMutex.RLock()
	defer elasticClientMutex.RUnlock()

	if elasticClient == nil {
		panic(errors.New("Tried to get elastic client before cache#SetElastic() was called"))
	}

	return elasticClient
}
