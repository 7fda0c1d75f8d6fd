package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-research/pkg/marketdata/provider Provider
//go:generate mockgen -destination=./mock_price_source.go -package=mocks github.com/rxtech-lab/argo-research/internal/pipeline PriceSource
//go:generate mockgen -destination=./mock_sentiment.go -package=mocks github.com/rxtech-lab/argo-research/internal/sentiment Scorer,Source
//go:generate mockgen -destination=./mock_sink.go -package=mocks github.com/rxtech-lab/argo-research/internal/report Sink
