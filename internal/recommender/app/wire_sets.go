//go:build wireinject

package app

import "github.com/google/wire"

var recommenderProviderSet = wire.NewSet(
	newRecommenderValkey,
	newRecommenderMessageProvider,
	newRecommenderDB,
	newRecommenderRepository,
	newRecommenderMatrix,
	newRecommenderStores,
	newRecommenderLock,
	newRecommenderServices,
	newRecommenderHTTPMux,
	newRecommenderHTTPServer,
	newRecommenderServerApp,
)
