//go:generate mockgen -source=../order_repository.go      -destination=./mock_order_repository.go      -package=mocks
//go:generate mockgen -source=../order_cache.go           -destination=./mock_order_cache.go           -package=mocks
//go:generate mockgen -source=../submission_validator.go  -destination=./mock_submission_validator.go  -package=mocks
//go:generate mockgen -source=../order_processor.go       -destination=./mock_order_processor.go       -package=mocks
//go:generate mockgen -source=../order_read_service.go    -destination=./mock_order_read_service.go    -package=mocks
//go:generate mockgen -source=../outcome_publisher.go     -destination=./mock_outcome_publisher.go     -package=mocks
//go:generate mockgen -source=../email_verifier.go        -destination=./mock_email_verifier.go        -package=mocks

package mocks
