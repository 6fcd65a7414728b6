/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityfactory_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/suparena/entityfactory"
	"github.com/suparena/entityfactory/errors"
	"github.com/suparena/entityfactory/internal/testmodels"
	"github.com/suparena/entityfactory/mocks"
)

type PersistenceTestSuite struct {
	suite.Suite

	ctx         context.Context
	mockCtrl    *gomock.Controller
	mockGateway *mocks.MockGateway
	mockHandle  *mocks.MockHandle
	factory     *entityfactory.Factory
}

func (suite *PersistenceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockCtrl = gomock.NewController(suite.T())
	suite.mockGateway = mocks.NewMockGateway(suite.mockCtrl)
	suite.mockHandle = mocks.NewMockHandle(suite.mockCtrl)
	suite.factory = newFactory(suite.T(), entityfactory.WithGateway(suite.mockGateway))
}

func (suite *PersistenceTestSuite) TearDownTest() {
	suite.mockCtrl.Finish()
}

func TestPersistence(t *testing.T) {
	suite.Run(t, new(PersistenceTestSuite))
}

func (suite *PersistenceTestSuite) builder(variant ...string) *entityfactory.Builder {
	b, err := suite.factory.Of(testmodels.BarType, variant...)
	suite.Require().NoError(err)
	return b
}

func (suite *PersistenceTestSuite) TestCreateSavesEachInstance() {
	var saved []any
	suite.mockGateway.EXPECT().
		HandleFor(testmodels.BarType).
		Return(suite.mockHandle, true).
		Times(3)
	suite.mockHandle.EXPECT().
		Save(gomock.Any(), gomock.AssignableToTypeOf(&testmodels.Bar{})).
		DoAndReturn(func(_ context.Context, entity any) error {
			saved = append(saved, entity)
			return nil
		}).
		Times(3)

	result, err := suite.builder().Times(3).Create(suite.ctx, nil)
	suite.Require().NoError(err)

	instances, ok := result.([]any)
	suite.Require().True(ok)
	suite.Equal(instances, saved)
}

func (suite *PersistenceTestSuite) TestCreateSingleInstance() {
	suite.mockGateway.EXPECT().HandleFor(testmodels.BarType).Return(suite.mockHandle, true)
	suite.mockHandle.EXPECT().Save(suite.ctx, gomock.Any()).Return(nil)

	result, err := suite.builder().Create(suite.ctx, entityfactory.Attrs(map[string]any{"bar": "kept"}))
	suite.Require().NoError(err)

	bar, ok := result.(*testmodels.Bar)
	suite.Require().True(ok)
	suite.Equal("kept", bar.Bar())
}

func (suite *PersistenceTestSuite) TestCreateWithoutHandleNeverSaves() {
	suite.mockGateway.EXPECT().HandleFor(testmodels.BarType).Return(nil, false)
	suite.mockHandle.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	_, err := suite.builder().Times(2).Create(suite.ctx, nil)
	suite.True(errors.IsNoPersistenceHandle(err))

	var nph *errors.NoPersistenceHandleError
	suite.Require().ErrorAs(err, &nph)
	suite.Equal(testmodels.BarType.String(), nph.Type)
}

func (suite *PersistenceTestSuite) TestCreateStopsAtFailingSave() {
	failure := stderrors.New("disk full")
	suite.mockGateway.EXPECT().HandleFor(testmodels.BarType).Return(suite.mockHandle, true).Times(2)
	gomock.InOrder(
		suite.mockHandle.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
		suite.mockHandle.EXPECT().Save(gomock.Any(), gomock.Any()).Return(failure),
	)

	_, err := suite.builder().Times(3).Create(suite.ctx, nil)
	suite.Same(failure, err)
}

func (suite *PersistenceTestSuite) TestCreateBuildFailureSavesNothing() {
	suite.mockGateway.EXPECT().HandleFor(gomock.Any()).Times(0)

	_, err := suite.builder().Times(2).Create(suite.ctx, entityfactory.Attrs(map[string]any{"missing": 1}))
	suite.True(errors.IsFieldNotFound(err))
}

func (suite *PersistenceTestSuite) TestCreateOneWrongTypeSavesNothing() {
	suite.mockGateway.EXPECT().HandleFor(gomock.Any()).Times(0)

	_, err := entityfactory.CreateOne[testmodels.Foo](suite.ctx, suite.builder(), nil)
	suite.True(errors.IsTypeResolution(err))
}

func (suite *PersistenceTestSuite) TestCreateWithoutGateway() {
	f := newFactory(suite.T())
	b, err := f.Of(testmodels.BarType)
	suite.Require().NoError(err)

	_, err = b.Create(suite.ctx, nil)
	suite.True(errors.IsNoPersistenceHandle(err))
}
