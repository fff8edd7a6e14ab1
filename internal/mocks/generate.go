package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/saveslot --output domain/saveslot --outpkg saveslotmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name HallOfFameRepository --dir ../domain/saveslot --output domain/saveslot --outpkg saveslotmock --filename hall_of_fame_repository_mock.go
