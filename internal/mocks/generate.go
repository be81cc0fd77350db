package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Store --dir ../domain/entity --output domain/entity --outpkg entitymock --filename store_mock.go
