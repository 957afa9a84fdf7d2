package interview

import (
	"gorm.io/gorm"

	redisclient "github.com/yungbote/interviewsim-backend/internal/clients/redis"
	"github.com/yungbote/interviewsim-backend/internal/data/repos/interviews"
	"github.com/yungbote/interviewsim-backend/internal/platform/logger"
	"github.com/yungbote/interviewsim-backend/internal/platform/openai"
	"github.com/yungbote/interviewsim-backend/internal/platform/rubric"
)

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	AI     openai.Client
	Rubric rubric.Rubric

	// Cache is optional. A nil cache disables score-report caching without
	// changing any behavior.
	Cache redisclient.Cache

	Interviews interviews.InterviewRepo
	Questions  interviews.QuestionRepo
	Responses  interviews.ResponseRepo
	SkillGaps  interviews.SkillGapRepo
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}
