package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name NameRepository --dir ../domain/team --output domain/team --outpkg teammock --filename name_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name IndexRepository --dir ../domain/team --output domain/team --outpkg teammock --filename index_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/translation --output domain/translation --outpkg translationmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name NameLookup --dir ../usecase --output usecase --outpkg usecasemock --filename name_lookup_mock.go
