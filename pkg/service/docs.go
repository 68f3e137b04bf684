package service

// @title ecsview API
// @version 1.0
// @description Cache backed view of the ECS clusters of the configured AWS accounts.
// @contact.name Specht Labs
// @contact.url specht-labs.de
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath /

import (
	ecsModels "github.com/spechtlabs/ecsview/pkg/ecs/models"
	globalModels "github.com/spechtlabs/ecsview/pkg/models"
)

// This file ensures all models are included in Swag documentation
var (
	_ = globalModels.ErrorResponse{}
	_ = globalModels.ClusterListResponse{}
	_ = globalModels.ClusterDetailListResponse{}
	_ = ecsModels.ClusterSummary{}
	_ = ecsModels.ClusterDetail{}
)
